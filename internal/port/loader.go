package port

type TextLoader interface {
	Load(path string) (string, error)
}
