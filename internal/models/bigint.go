package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math/big"
)

// BigInt stores uint256-scale amounts in a numeric(78,0) column.
type BigInt struct {
	i big.Int
}

// NewBigInt copies v into a BigInt. A nil v yields zero.
func NewBigInt(v *big.Int) BigInt {
	var b BigInt
	if v != nil {
		b.i.Set(v)
	}
	return b
}

// NewBigIntFromUint64 returns a BigInt holding v.
func NewBigIntFromUint64(v uint64) BigInt {
	var b BigInt
	b.i.SetUint64(v)
	return b
}

// Int returns a copy of the stored value.
func (b BigInt) Int() *big.Int {
	return new(big.Int).Set(&b.i)
}

// Sign reports the sign of the stored value.
func (b BigInt) Sign() int { return b.i.Sign() }

func (b BigInt) String() string { return b.i.String() }

// Value implements the driver.Valuer interface.
func (b BigInt) Value() (driver.Value, error) {
	return b.i.String(), nil
}

// Scan implements the sql.Scanner interface.
func (b *BigInt) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		b.i.SetInt64(0)
		return nil
	case int64:
		b.i.SetInt64(v)
		return nil
	case []byte:
		return b.setString(string(v))
	case string:
		return b.setString(v)
	default:
		return fmt.Errorf("cannot scan %T into BigInt", value)
	}
}

func (b *BigInt) setString(s string) error {
	if s == "" {
		b.i.SetInt64(0)
		return nil
	}
	if _, ok := b.i.SetString(s, 10); !ok {
		return fmt.Errorf("invalid numeric value %q", s)
	}
	return nil
}

// MarshalJSON encodes the value as a decimal string.
func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.i.String() + `"`), nil
}

// UnmarshalJSON accepts a decimal string or a bare number.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	if b == nil {
		return errors.New("nil pointer")
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return b.setString(s)
}

// GormDataType tells gorm which column type to use.
func (BigInt) GormDataType() string {
	return "numeric(78,0)"
}
