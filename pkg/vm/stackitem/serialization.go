package stackitem

import (
	"math/big"

	"github.com/synapse-chain/synapse/pkg/encoding/bigint"
	"github.com/synapse-chain/synapse/pkg/io"
)

// Serialize encodes item to its deterministic binary form, failing on a
// cycle, an InteropHandle/Pointer anywhere in the tree, or a result
// exceeding MaxSize.
func Serialize(item Item) ([]byte, error) {
	w := io.NewBufBinWriter()
	EncodeBinaryStackItem(item, w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	data := w.Bytes()
	if len(data) > MaxSize {
		return nil, ErrTooBig
	}
	return data, nil
}

// EncodeBinaryStackItem performs an iterative depth-first emission of
// item onto w, using an explicit work stack so recursion depth is bounded
// by available memory rather than the Go call stack. An auxiliary set of
// visited container identities rejects cycles.
func EncodeBinaryStackItem(item Item, w *io.BinWriter) {
	if w.Err != nil {
		return
	}

	visited := make(map[Item]struct{})
	stack := []Item{item}

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		switch it := cur.(type) {
		case *ByteArray:
			w.WriteB(byte(ByteArrayT))
			w.WriteVarBytes(it.value)
		case *Bool:
			w.WriteB(byte(BooleanT))
			w.WriteBool(it.value)
		case *BigInteger:
			w.WriteB(byte(IntegerT))
			w.WriteVarBytes(it.Bytes())
		case *Array:
			if err := markVisited(visited, cur); err != nil {
				w.Err = err
				return
			}
			w.WriteB(byte(ArrayT))
			w.WriteVarUint(uint64(len(it.value)))
			stack = pushReverse(stack, it.value)
		case *Struct:
			if err := markVisited(visited, cur); err != nil {
				w.Err = err
				return
			}
			w.WriteB(byte(StructT))
			w.WriteVarUint(uint64(len(it.value)))
			stack = pushReverse(stack, it.value)
		case *Map:
			if err := markVisited(visited, cur); err != nil {
				w.Err = err
				return
			}
			w.WriteB(byte(MapT))
			w.WriteVarUint(uint64(len(it.value)))
			// Pairs are pushed (value, key) in reverse pair order so that,
			// once popped, key precedes value in the emitted stream.
			for idx := len(it.value) - 1; idx >= 0; idx-- {
				stack = append(stack, it.value[idx].Value, it.value[idx].Key)
			}
		default:
			w.Err = ErrUnserializable
			return
		}
	}
}

// DeepCopy returns an independent copy of item's tree: scalar leaves are
// copied by value and containers are rebuilt structurally, so later
// in-place mutation of item (an Array.Append, a Map.Add) cannot alter
// the copy. A self-reference collapses to a reference to the
// already-built copy of that node rather than recursing forever, whereas
// EncodeBinaryStackItem rejects a cycle with ErrCircularRef.
func DeepCopy(item Item) Item {
	return deepCopy(item, make(map[Item]Item))
}

func deepCopy(item Item, seen map[Item]Item) Item {
	if item == nil {
		return nil
	}
	if cp, ok := seen[item]; ok {
		return cp
	}
	switch it := item.(type) {
	case *ByteArray:
		b := make([]byte, len(it.value))
		copy(b, it.value)
		return NewByteArray(b)
	case *Bool:
		return NewBool(it.value)
	case *BigInteger:
		return NewBigInteger(new(big.Int).Set(it.value))
	case Null:
		return it
	case *Array:
		cp := NewArray(nil)
		seen[item] = cp
		cp.value = deepCopyElements(it.value, seen)
		return cp
	case *Struct:
		cp := NewStruct(nil)
		seen[item] = cp
		cp.value = deepCopyElements(it.value, seen)
		return cp
	case *Map:
		cp := NewMap()
		seen[item] = cp
		for _, el := range it.value {
			cp.Add(deepCopy(el.Key, seen), deepCopy(el.Value, seen))
		}
		return cp
	default:
		// InteropHandle wraps a host object reference, not owned data;
		// there is nothing to copy.
		return item
	}
}

func deepCopyElements(items []Item, seen map[Item]Item) []Item {
	out := make([]Item, len(items))
	for idx, el := range items {
		out[idx] = deepCopy(el, seen)
	}
	return out
}

func markVisited(visited map[Item]struct{}, it Item) error {
	if _, ok := visited[it]; ok {
		return ErrCircularRef
	}
	visited[it] = struct{}{}
	return nil
}

// pushReverse appends items onto stack in reverse order so that, once
// popped one at a time, they come off in original order.
func pushReverse(stack []Item, items []Item) []Item {
	for idx := len(items) - 1; idx >= 0; idx-- {
		stack = append(stack, items[idx])
	}
	return stack
}

// token is one flat entry produced by the first deserialization pass.
type token struct {
	typ      Type
	bytes    []byte // ByteArray/Integer payload
	boolVal  bool
	count    int // container child (or, for Map, pair) count
	isPair   bool
}

// Deserialize decodes data produced by Serialize back into an Item tree.
func Deserialize(data []byte) (Item, error) {
	if len(data) > MaxSize {
		return nil, ErrTooBig
	}
	r := io.NewBinReaderFromBuf(data)
	item := DecodeBinaryStackItem(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return item, nil
}

// DecodeBinaryStackItem performs the inverse of EncodeBinaryStackItem: a
// flattening first pass over the token stream followed by a fold that
// reconstructs containers from their recorded child counts.
func DecodeBinaryStackItem(r *io.BinReader) Item {
	tokens, err := readTokens(r)
	if err != nil {
		if r.Err == nil {
			r.Err = err
		}
		return nil
	}

	item, rest, err := foldTokens(tokens)
	if err != nil {
		if r.Err == nil {
			r.Err = err
		}
		return nil
	}
	if len(rest) != 0 {
		r.Err = ErrInvalidValue
		return nil
	}
	return item
}

// readTokens reads the whole flat token stream, tracking a pending count
// of not-yet-seen children so it knows when the stream is complete.
func readTokens(r *io.BinReader) ([]token, error) {
	var tokens []token
	pending := 1

	for pending > 0 {
		if r.Err != nil {
			return nil, r.Err
		}
		typ := Type(r.ReadB())
		if r.Err != nil {
			return nil, r.Err
		}
		pending--

		switch typ {
		case ByteArrayT:
			b := r.ReadVarBytes(MaxSize)
			if r.Err != nil {
				return nil, r.Err
			}
			tokens = append(tokens, token{typ: typ, bytes: b})
		case BooleanT:
			v := r.ReadBool()
			if r.Err != nil {
				return nil, r.Err
			}
			tokens = append(tokens, token{typ: typ, boolVal: v})
		case IntegerT:
			b := r.ReadVarBytes(MaxSize)
			if r.Err != nil {
				return nil, r.Err
			}
			tokens = append(tokens, token{typ: typ, bytes: b})
		case ArrayT, StructT:
			n := r.ReadVarUint()
			if r.Err != nil {
				return nil, r.Err
			}
			if n > MaxArraySize {
				return nil, ErrTooBigArray
			}
			tokens = append(tokens, token{typ: typ, count: int(n)})
			pending += int(n)
		case MapT:
			n := r.ReadVarUint()
			if r.Err != nil {
				return nil, r.Err
			}
			if n > MaxArraySize {
				return nil, ErrTooBigArray
			}
			tokens = append(tokens, token{typ: typ, count: int(n), isPair: true})
			pending += int(n) * 2
		default:
			return nil, ErrInvalidType
		}
	}
	return tokens, nil
}

// foldTokens folds the flat token sequence back into one Item. It walks
// the tokens in stream order by recursive descent (foldOne): a container
// token consumes exactly its recorded child count (for a Map, that many
// key/value pairs) from the tokens that follow it. It returns the tokens
// left over after the first complete item.
func foldTokens(tokens []token) (Item, []token, error) {
	pos := 0
	item, err := foldOne(tokens, &pos)
	if err != nil {
		return nil, nil, err
	}
	return item, tokens[pos:], nil
}

func foldOne(tokens []token, pos *int) (Item, error) {
	if *pos >= len(tokens) {
		return nil, ErrInvalidValue
	}
	t := tokens[*pos]
	*pos++

	switch t.typ {
	case ByteArrayT:
		return NewByteArray(t.bytes), nil
	case BooleanT:
		return NewBool(t.boolVal), nil
	case IntegerT:
		return NewBigInteger(bigint.FromBytes(t.bytes)), nil
	case ArrayT, StructT:
		items := make([]Item, 0, t.count)
		for i := 0; i < t.count; i++ {
			child, err := foldOne(tokens, pos)
			if err != nil {
				return nil, err
			}
			items = append(items, child)
		}
		if t.typ == ArrayT {
			return NewArray(items), nil
		}
		return NewStruct(items), nil
	case MapT:
		m := NewMap()
		for i := 0; i < t.count; i++ {
			key, err := foldOne(tokens, pos)
			if err != nil {
				return nil, err
			}
			val, err := foldOne(tokens, pos)
			if err != nil {
				return nil, err
			}
			m.Add(key, val)
		}
		return m, nil
	default:
		return nil, ErrInvalidType
	}
}

