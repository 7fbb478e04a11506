// Package encryption seals values stored outside the process.
//
// A Sealer binds each ciphertext to a caller-supplied associated value, so a
// sealed form snapshot only opens under the key it was written for.
//
//	s, err := encryption.New(encryption.Config{Key: secret})
//	box, err := s.Seal(plaintext, []byte(id))
//	plaintext, err := s.Open(box, []byte(id))
package encryption
