package seam

// OpaqueBytes carries raw proposal bytes between acquisition and
// validation without exposing them to inspection. The type deliberately
// has no String, Len, equality, or iteration affordances: the only legal
// operation is Unwrap, performed exactly once by the proposal validator
// at the trust boundary. Code upstream of validation must treat the
// value as a sealed envelope.
type OpaqueBytes struct {
	data []byte
}

// Wrap seals raw bytes into an opaque carrier.
func Wrap(data []byte) OpaqueBytes {
	return OpaqueBytes{data: data}
}

// Unwrap releases the raw bytes. Trust-boundary use only: the proposal
// validator is the sole caller, and it calls exactly once per run.
func (b OpaqueBytes) Unwrap() []byte {
	return b.data
}
