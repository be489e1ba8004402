package models

// User is the author snapshot embedded into posts and comments. It is copied
// from the identity at write time and never updated afterwards.
type User struct {
	UserID    string `json:"userId"             bson:"user_id"`
	UserImage string `json:"userImage"          bson:"user_image"`
	Firstname string `json:"firstname"          bson:"firstname"`
	Lastname  string `json:"lastname,omitempty" bson:"lastname,omitempty"`
}

// Identity is the caller as described by the identity provider.
type Identity struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
}

// AsUser builds the embedded author, falling back to fallbackName when the
// provider has no first name for the caller.
func (i Identity) AsUser(fallbackName string) User {
	first := i.FirstName
	if first == "" {
		first = fallbackName
	}
	return User{
		UserID:    i.ID,
		UserImage: i.ImageURL,
		Firstname: first,
		Lastname:  i.LastName,
	}
}
