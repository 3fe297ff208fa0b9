package transaction

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/synapse-chain/synapse/pkg/io"
)

// MaxInvocationScript is the maximum length of a witness's invocation
// script.
const MaxInvocationScript = 1024

// MaxVerificationScript is the maximum length of a witness's verification
// script.
const MaxVerificationScript = 1024

// Witness is a pair of scripts authorizing a container: the invocation
// script pushes arguments, the verification script checks them.
type Witness struct {
	InvocationScript   []byte
	VerificationScript []byte
}

// EncodeBinary implements the io.Serializable interface.
func (w *Witness) EncodeBinary(bw *io.BinWriter) {
	bw.WriteVarBytes(w.InvocationScript)
	bw.WriteVarBytes(w.VerificationScript)
}

// DecodeBinary implements the io.Serializable interface.
func (w *Witness) DecodeBinary(br *io.BinReader) {
	w.InvocationScript = br.ReadVarBytes(MaxInvocationScript)
	w.VerificationScript = br.ReadVarBytes(MaxVerificationScript)
	if br.Err == nil {
		if len(w.InvocationScript) > MaxInvocationScript {
			br.Err = errors.New("invocation script is too long")
			return
		}
		if len(w.VerificationScript) > MaxVerificationScript {
			br.Err = errors.New("verification script is too long")
		}
	}
}

type witnessAux struct {
	Invocation   string `json:"invocation"`
	Verification string `json:"verification"`
}

// MarshalJSON implements the json.Marshaler interface.
func (w Witness) MarshalJSON() ([]byte, error) {
	return json.Marshal(witnessAux{
		Invocation:   base64.StdEncoding.EncodeToString(w.InvocationScript),
		Verification: base64.StdEncoding.EncodeToString(w.VerificationScript),
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (w *Witness) UnmarshalJSON(data []byte) error {
	aux := new(witnessAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	inv, err := base64.StdEncoding.DecodeString(aux.Invocation)
	if err != nil {
		return err
	}
	ver, err := base64.StdEncoding.DecodeString(aux.Verification)
	if err != nil {
		return err
	}
	w.InvocationScript = inv
	w.VerificationScript = ver
	return nil
}

// Copy returns a deep copy of w.
func (w *Witness) Copy() Witness {
	inv := make([]byte, len(w.InvocationScript))
	copy(inv, w.InvocationScript)
	ver := make([]byte, len(w.VerificationScript))
	copy(ver, w.VerificationScript)
	return Witness{InvocationScript: inv, VerificationScript: ver}
}
