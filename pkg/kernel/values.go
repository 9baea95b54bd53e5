package kernel

// EmbeddingVector is a dense text embedding
type EmbeddingVector []float32

// IsZero reports whether the vector is absent
func (e EmbeddingVector) IsZero() bool { return len(e) == 0 }

type Email string

func (e Email) String() string { return string(e) }

type Phone string

func (p Phone) String() string { return string(p) }

type StoragePath string

func (s StoragePath) String() string { return string(s) }
