package pcomb

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Parser name constants for built in parsers. Names prefix error messages
// and identify parsers in trace output.
const (
	StrParserName        = "str"
	CharParserName       = "char"
	LettersParserName    = "letters"
	DigitsParserName     = "digits"
	EndOfInputParserName = "endOfInput"
	SequenceOfParserName = "sequenceOf"
	ChoiceParserName     = "choice"
	ManyParserName       = "many"
	ManyStrictParserName = "manyStrict"
	SepByParserName      = "sepBy"
	BetweenParserName    = "between"
	LazyParserName       = "lazy"
	SucceedParserName    = "succeed"
	FailParserName       = "fail"
	BitParserName        = "bit"
	BitZeroParserName    = "bitZero"
	BitOneParserName     = "bitOne"
	UintParserName       = "uint"
	IntParserName        = "int"
	RawStringParserName  = "rawString"
	RuleParserName       = "rule"
)

const (
	// previewLength is how many units of remaining input a mismatch
	// message quotes before truncating with previewEllipsis.
	previewLength   = 10
	previewEllipsis = "..."

	// maxBitWidth is the widest integer Uint and Int can decode.
	maxBitWidth = 64

	bitsPerByte = 8
)

// constants for the struct tag used by Decode
const (
	DecodeTagName          = "pcomb"
	DecodeTagDelimiter     = ","
	RequiredDecodeModifier = "required"
	SkipDecodeTag          = "-"
)

// reflect.TypeOf constants for type checks
var (
	UUIDType  = reflect.TypeOf(uuid.UUID{})
	TimeType  = reflect.TypeOf(time.Time{})
	BytesType = reflect.TypeOf([]byte{})
)
