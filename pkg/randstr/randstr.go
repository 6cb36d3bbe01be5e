package randstr

import "crypto/rand"

type generator struct {
	alphabet []byte
}

func New(alphabet []byte) *generator {
	return &generator{alphabet: alphabet}
}

func (g generator) GenerateRandomString(length int) string {
	buf := make([]byte, length)
	rand.Read(buf)

	for i, b := range buf {
		buf[i] = g.alphabet[int(b)%len(g.alphabet)]
	}

	return string(buf)
}
