package blueprint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Common errors for blueprint decoding.
var (
	ErrNotBlueprint = errors.New("not a blueprint file")
	ErrBadVersion   = errors.New("unsupported blueprint version")
)

// MaxVersion is the newest envelope version this codec understands.
const MaxVersion = 1

// Info is the envelope metadata extracted by Sniff without a full decode.
type Info struct {
	Author   string
	Type     string
	Version  uint8
	Datetime string
}

// Sniff inspects raw save data and returns its envelope metadata. It rejects
// files that are not blueprint-shaped before a full decode is attempted.
func Sniff(data []byte) (Info, error) {
	if !gjson.ValidBytes(data) {
		return Info{}, fmt.Errorf("sniff: %w: invalid JSON", ErrNotBlueprint)
	}

	root := gjson.ParseBytes(data)
	version := root.Get("version")
	if !version.Exists() || !root.Get("data").IsObject() {
		return Info{}, fmt.Errorf("sniff: %w: missing version or data", ErrNotBlueprint)
	}
	if version.Uint() > MaxVersion {
		return Info{}, fmt.Errorf("sniff: %w: version %d", ErrBadVersion, version.Uint())
	}

	return Info{
		Author:   root.Get("author").String(),
		Type:     root.Get("type").String(),
		Version:  uint8(version.Uint()),
		Datetime: root.Get("datetime").String(),
	}, nil
}

// Decode parses raw save data into a Blueprint.
func Decode(data []byte) (*Blueprint, error) {
	if _, err := Sniff(data); err != nil {
		return nil, err
	}

	var bp Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("decode blueprint: %w", err)
	}
	return &bp, nil
}

// Encode serializes a Blueprint to pretty-printed save data.
func Encode(bp *Blueprint) ([]byte, error) {
	raw, err := json.Marshal(bp)
	if err != nil {
		return nil, fmt.Errorf("encode blueprint: %w", err)
	}
	return pretty.Pretty(raw), nil
}

// Load reads and decodes a blueprint file.
func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load blueprint: %w", err)
	}
	return Decode(data)
}

// Save encodes a blueprint and writes it to path.
func Save(path string, bp *Blueprint) error {
	data, err := Encode(bp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save blueprint: %w", err)
	}
	return nil
}
