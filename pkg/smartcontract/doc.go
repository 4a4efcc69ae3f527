/*
Package smartcontract converts between Go values and node values of Ralph
types and encodes contract fields into bytecode.

Ralph types map to Go types in the following way:

	Bool    -> bool
	I256    -> *big.Int
	U256    -> *uint256.Int
	ByteVec -> string (hex)
	Address -> string (base58)
	[T;N]   -> []T ([]any when decoded without a target type)

Conversions to node values also accept Go integers of any width, *big.Int for
U256, []byte for ByteVec and decimal strings for numbers. Values that don't
fit the type (negative U256, more than 256 bits, wrong array length) are
rejected with ErrInvalidValue.
*/
package smartcontract
