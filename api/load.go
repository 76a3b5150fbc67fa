package api

import (
	"encoding/json"
	"os"

	"github.com/buger/jsonparser"

	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/logger"
)

// Load reads a details file and returns its entities in document order.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.MarkAs(err, errors.ErrInputNotFound, "details file not found"),
				"set input.details_path in am.toml or pass --input")
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	coll, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	logger.Debugw("Loaded details", logger.FieldFile, path, logger.FieldCount, coll.Len())
	return coll, nil
}

// Parse decodes a details document: a single JSON object mapping entity
// paths to entity records. Key order is preserved.
func Parse(data []byte) (*Collection, error) {
	coll := NewCollection()

	err := jsonparser.ObjectEach(data, func(rawKey []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		key, err := jsonparser.ParseString(rawKey)
		if err != nil {
			return errors.MarkAs(err, errors.ErrInvalidInput, "malformed entity key")
		}
		if dataType != jsonparser.Object {
			return errors.Newk(errors.ErrInvalidInput, "entity %s is a %s, expected an object", key, dataType)
		}

		var e Entity
		if err := json.Unmarshal(value, &e); err != nil {
			return errors.MarkAs(err, errors.ErrInvalidInput, "malformed entity "+key)
		}
		switch {
		case e.Location == "":
			e.Location = key
		case e.Location != key:
			logger.Warnw("Entity location differs from its key, using key",
				logger.FieldEntity, key, "location", e.Location)
			e.Location = key
		}
		return coll.Add(key, &e)
	})
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			return nil, err
		}
		return nil, errors.MarkAs(err, errors.ErrInvalidInput, "details must be a JSON object")
	}
	return coll, nil
}
