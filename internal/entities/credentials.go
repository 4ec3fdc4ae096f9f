package entities

// Credentials is the pair every remote call needs. A pair is only usable when both fields are set.
type Credentials struct {
	Token        string
	CollectionID string
}

func (c Credentials) Complete() bool {
	return c.Token != "" && c.CollectionID != ""
}
