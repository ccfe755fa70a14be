package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/json2table/internal/errors" // Custom errors package
	"github.com/mcncl/json2table/internal/models"
)

// MaxNesting is the deepest array/object nesting Parse accepts. It matches
// the limit encoding/json applies when decoding into interface values.
const MaxNesting = 10000

// Parse decodes a single JSON value from reader. Object members keep the
// order in which they appear in the input; a repeated key keeps its first
// position and its last value.
func Parse(reader io.Reader) (models.Document, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // numbers stay as their literal text

	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Document{}, wrapDecodeError(err)
	}

	root, err := decodeToken(decoder, tok, 0)
	if err != nil {
		return models.Document{}, wrapDecodeError(err)
	}

	// Anything other than EOF after the root value is either a second value
	// or garbage.
	if _, err := decoder.Token(); err == nil {
		return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return models.Document{Root: root}, nil
}

// decodeValue reads the next complete value from decoder.
func decodeValue(decoder *json.Decoder, depth int) (models.Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	return decodeToken(decoder, tok, depth)
}

func decodeToken(decoder *json.Decoder, tok json.Token, depth int) (models.Value, error) {
	switch t := tok.(type) {
	case nil:
		return models.Null{}, nil
	case bool:
		return models.Bool(t), nil
	case json.Number:
		return models.Number(t), nil
	case string:
		return models.String(t), nil
	case json.Delim:
		if depth >= MaxNesting {
			return nil, errors.NewDepthError(errors.ErrorTypeParsing, depth+1, MaxNesting)
		}
		switch t {
		case '{':
			return decodeObject(decoder, depth)
		case '[':
			return decodeArray(decoder, depth)
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

func decodeObject(decoder *json.Decoder, depth int) (models.Value, error) {
	obj := models.Object{}
	index := make(map[string]int)
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}
		value, err := decodeValue(decoder, depth+1)
		if err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			obj[i].Value = value
			continue
		}
		index[key] = len(obj)
		obj = append(obj, models.Member{Key: key, Value: value})
	}
	if err := closeDelim(decoder); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(decoder *json.Decoder, depth int) (models.Value, error) {
	arr := models.Array{}
	for decoder.More() {
		value, err := decodeValue(decoder, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if err := closeDelim(decoder); err != nil {
		return nil, err
	}
	return arr, nil
}

// closeDelim consumes the ']' or '}' that ends the current container.
func closeDelim(decoder *json.Decoder) error {
	if _, err := decoder.Token(); err != nil {
		return unexpectedEOF(err)
	}
	return nil
}

// unexpectedEOF turns io.EOF inside a value into io.ErrUnexpectedEOF, the
// same way json.Unmarshal reports truncated input.
func unexpectedEOF(err error) error {
	if stderrors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// wrapDecodeError converts decoder failures into parsing errors that keep
// the original diagnostic.
func wrapDecodeError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			fmt.Errorf("%w: %w", errors.ErrInvalidJSON, err),
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError(
			"unexpected end of JSON input",
			fmt.Errorf("%w: %w", errors.ErrInvalidJSON, err),
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	// An empty reader and a whitespace-only reader both reach Parse as EOF;
	// report them as input errors before decoding.
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
