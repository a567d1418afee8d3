package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Parse strategies reported by SmartParse.
const (
	StrategyStrict = "strict"
	StrategyRepair = "repair"
	StrategyHJSON  = "hjson"
)

// RepairJSON attempts to fix common JSON errors from LLM outputs.
// Uses github.com/RealAlexandreAI/json-repair for intelligent repair.
// Supported repairs:
// - Missing quotes around keys
// - Single quotes instead of double quotes
// - Unclosed arrays/objects
// - Trailing commas
// - Comments in JSON
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human-friendly JSON (Hjson) and returns standard JSON.
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(hjsonData), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(jsonBytes), nil
}

// DecodeStrict decodes exactly one JSON document, rejecting trailing data.
func DecodeStrict(input string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

// SmartParse tries multiple parsing strategies to extract a JSON value.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair
// 3. Hjson parse (most lenient)
//
// The strict error is returned when every strategy fails, since it is the most
// useful one to show.
func SmartParse(input string) (interface{}, string, error) {
	v, strictErr := DecodeStrict(input)
	if strictErr == nil {
		return v, StrategyStrict, nil
	}

	// Prose without any object or array is never repaired into a document.
	if !strings.ContainsAny(input, "{[") {
		return nil, "", strictErr
	}

	if repaired, err := RepairJSON(input); err == nil {
		if v, err := DecodeStrict(repaired); err == nil && isContainer(v) {
			return v, StrategyRepair, nil
		}
	}

	if converted, err := ParseHJSON(input); err == nil {
		if v, err := DecodeStrict(converted); err == nil && isContainer(v) {
			return v, StrategyHJSON, nil
		}
	}

	return nil, "", strictErr
}

// isContainer guards the lenient strategies, which happily turn prose into a
// bare string.
func isContainer(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	}
	return false
}
