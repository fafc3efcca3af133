package domain

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DefaultInitializer is called through the proxy constructor unless told otherwise
const DefaultInitializer = "initialize"

// InitializerOptions describes which function the proxy constructor delegatecalls.
type InitializerOptions struct {
	// Name is a function name or full signature, e.g. "initialize(address)".
	// Empty means DefaultInitializer, and a missing function is tolerated when
	// there are no args.
	Name string
	// Disabled deploys the proxy with empty init data.
	Disabled bool
}

// EncodeInitializer builds the init calldata handed to the proxy constructor.
func EncodeInitializer(contractABI abi.ABI, opts InitializerOptions, args []string) ([]byte, error) {
	if opts.Disabled {
		if len(args) > 0 {
			return nil, fmt.Errorf("%w: %d args given but initializer is disabled", ErrInvalidInitializer, len(args))
		}
		return []byte{}, nil
	}

	name := opts.Name
	allowNone := name == "" && len(args) == 0
	if name == "" {
		name = DefaultInitializer
	}

	method, ok := FindMethod(contractABI, name)
	if !ok {
		if allowNone {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("%w: function %s not found in ABI", ErrInvalidInitializer, name)
	}

	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("%w: %s expects %d args, got %d", ErrInvalidInitializer, method.Sig, len(method.Inputs), len(args))
	}

	values := make([]any, len(args))
	for i, raw := range args {
		v, err := ConvertArg(method.Inputs[i].Type, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: arg %d (%s): %v", ErrInvalidInitializer, i, method.Inputs[i].Type.String(), err)
		}
		values[i] = v
	}

	data, err := contractABI.Pack(method.Name, values...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitializer, err)
	}
	return data, nil
}

// FindMethod looks a method up by name or by signature.
func FindMethod(contractABI abi.ABI, nameOrSig string) (abi.Method, bool) {
	if strings.Contains(nameOrSig, "(") {
		for _, m := range contractABI.Methods {
			if m.Sig == nameOrSig {
				return m, true
			}
		}
		return abi.Method{}, false
	}
	m, ok := contractABI.Methods[nameOrSig]
	return m, ok
}

// InferProxyKind picks uups when the implementation carries its own upgrade
// entrypoint and transparent otherwise.
func InferProxyKind(contractABI abi.ABI) ProxyKind {
	if _, ok := contractABI.Methods["upgradeToAndCall"]; ok {
		return ProxyKindUUPS
	}
	if _, ok := contractABI.Methods["proxiableUUID"]; ok {
		return ProxyKindUUPS
	}
	return ProxyKindTransparent
}

// inRange reports whether n fits an integer type of t.Size bits.
// Signed types span [-2^(size-1), 2^(size-1)-1].
func inRange(n *big.Int, t abi.Type) bool {
	if t.T == abi.UintTy {
		return n.Sign() >= 0 && n.BitLen() <= t.Size
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	lower := new(big.Int).Neg(bound)
	upper := new(big.Int).Sub(bound, big.NewInt(1))
	return n.Cmp(lower) >= 0 && n.Cmp(upper) <= 0
}

// ConvertArg turns a command-line string into the Go value abi.Pack expects for t.
// Arrays and tuples are not supported.
func ConvertArg(t abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		if t.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %q for unsigned type", raw)
		}
		goType := t.GetType()
		if goType.Kind() == reflect.Ptr {
			if !inRange(n, t) {
				return nil, fmt.Errorf("value %q overflows %s", raw, t.String())
			}
			return n, nil
		}
		v := reflect.New(goType).Elem()
		if t.T == abi.UintTy {
			if !n.IsUint64() || v.OverflowUint(n.Uint64()) {
				return nil, fmt.Errorf("value %q overflows %s", raw, t.String())
			}
			v.SetUint(n.Uint64())
		} else {
			if !n.IsInt64() || v.OverflowInt(n.Int64()) {
				return nil, fmt.Errorf("value %q overflows %s", raw, t.String())
			}
			v.SetInt(n.Int64())
		}
		return v.Interface(), nil

	case abi.BoolTy:
		return strconv.ParseBool(raw)

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		return hexutil.Decode(raw)

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))
		return v.Interface(), nil
	}

	return nil, fmt.Errorf("unsupported argument type %s", t.String())
}
