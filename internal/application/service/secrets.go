package service

// SecretStore is the encrypted preference store behind setup, unlock and
// settings. securestore.Store implements it.
type SecretStore interface {
	Get(key string) (string, bool, error)
	GetBool(key string) (bool, error)
	Set(key, value string) error
	SetBool(key string, value bool) error
	SetMany(values map[string]string) error
	Delete(key string) error
	Clear() error
}
