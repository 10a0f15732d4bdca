package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/models"
)

// Parse converts JSON data from an io.Reader into a models.Document. Object
// key order follows the document, and numbers are kept as json.Number so
// digit sequences survive intact.
func Parse(reader io.Reader) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ParseString parses JSON from a string.
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}

	dec := json.NewDecoder(strings.NewReader(jsonString))
	dec.UseNumber() // Ensure numbers are read as json.Number

	root, err := parseValue(dec)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Document{}, wrapParseError(jsonString, err)
	}

	// Anything after the first value other than whitespace is an error.
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return models.Document{}, wrapParseError(jsonString, err)
		}
		return models.Document{}, errors.NewParsingError(
			fmt.Sprintf("unexpected trailing token %v after first JSON value", tok),
			errors.ErrInvalidJSON,
		)
	}

	return models.Document{Root: root}, nil
}

// ParseFile parses JSON from a file path.
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseString(string(data))
}

// parseValue consumes one JSON value from the decoder's token stream,
// building ordered objects as it goes.
func parseValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		// Token never yields a bare ']' or '}' at value position.
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		// string, bool, json.Number, or nil.
		return t, nil
	}
}

func parseObject(dec *json.Decoder) (models.Object, error) {
	obj := models.Object{}
	var index map[string]int

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		// Duplicate keys: last value wins, first position wins.
		if index == nil {
			index = make(map[string]int)
		}
		if at, dup := index[key]; dup {
			obj[at].Value = val
			continue
		}
		index[key] = len(obj)
		obj = append(obj, models.Member{Key: key, Value: val})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (models.Array, error) {
	arr := models.Array{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}

	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// wrapParseError turns a decoder error into an AppError whose message names
// the 1-based line and column of the failure, so the error view can point at
// the offending character.
//
// SyntaxError offsets surfaced through the Token walk are relative to the
// decoder's internal read position, not to the start of the input, so the
// position is re-harvested from a whole-input scan whose offsets are
// stream-absolute.
func wrapParseError(text string, err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		line, col := LineCol(text, absoluteOffset(text, syntaxError.Offset))
		return errors.NewParsingError(
			fmt.Sprintf("syntax error at line %d column %d", line, col),
			err,
		)
	}
	var typeError *json.UnmarshalTypeError
	if stderrors.As(err, &typeError) {
		line, col := LineCol(text, typeError.Offset)
		return errors.NewParsingError(
			fmt.Sprintf("type error at line %d column %d for type %s", line, col, typeError.Type),
			err,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		line, col := LineCol(text, int64(len(text)))
		return errors.NewParsingError(
			fmt.Sprintf("unexpected end of input at line %d column %d", line, col),
			err,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// absoluteOffset rescans text from the start and returns the syntax error
// offset of that scan, which counts bytes up to and including the offending
// one. Anything the Token walk rejects the full scan rejects too; if the
// rescan somehow fails differently, fallback is kept as a best effort.
func absoluteOffset(text string, fallback int64) int64 {
	var rescan *json.SyntaxError
	if err := json.Unmarshal([]byte(text), new(interface{})); stderrors.As(err, &rescan) {
		return rescan.Offset
	}
	return fallback
}

// LineCol converts a decoder byte offset into 1-based line and column
// numbers within text. Offsets outside the text are clamped.
func LineCol(text string, offset int64) (line, col int) {
	i := int(offset) - 1
	if i < 0 {
		i = 0
	}
	if i > len(text) {
		i = len(text)
	}
	line = 1 + strings.Count(text[:i], "\n")
	col = i - strings.LastIndexByte(text[:i], '\n')
	return line, col
}
