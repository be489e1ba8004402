package config

const (
	DefaultLimitPosts = 20
	MaxLimitPosts     = 100
)
