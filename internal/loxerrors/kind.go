package loxerrors

import "errors"

// Kind identifies the pipeline stage an error was raised in.
type Kind uint8

const (
	KindNone Kind = iota
	KindScan
	KindParse
	KindRuntime
	KindOther
)

var kindNames = [...]string{
	KindNone:    "none",
	KindScan:    "scan",
	KindParse:   "parse",
	KindRuntime: "runtime",
	KindOther:   "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Classify reports which stage produced err. A joined error classifies as its first
// recognised member, so a batch of parse errors is KindParse.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	var scanErr *ScannerError
	var parseErr *ParserError
	var runtimeErr *RuntimeError
	switch {
	case errors.As(err, &scanErr):
		return KindScan
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &runtimeErr):
		return KindRuntime
	}

	return KindOther
}
