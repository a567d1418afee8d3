// Package normalize validates model output against the FinancialReport shape
// and coerces every line-item value to a non-negative number.
package normalize

import (
	"fmt"
	"strconv"

	"statement_insight/pkg/core/apperr"
	"statement_insight/pkg/core/logger"
	"statement_insight/pkg/core/utils"
	"statement_insight/pkg/models"

	"github.com/sirupsen/logrus"
)

const (
	sectionBalanceSheet    = "balance_sheet"
	sectionIncomeStatement = "income_statement"
)

// Normalize parses raw model text into a FinancialReport.
//
// Code fences are stripped, the text is parsed strictly and, failing that,
// through the JSON repair ladder (utils.SmartParse). Parse failure yields
// *apperr.MalformedResponseError; shape violations yield *apperr.SchemaError.
func Normalize(responseText string) (*models.FinancialReport, error) {
	cleaned := utils.StripCodeFences(responseText)

	doc, strategy, err := utils.SmartParse(cleaned)
	if err != nil {
		logger.Log.WithField("error", err).Error("Error decoding JSON from model response")
		return nil, &apperr.MalformedResponseError{Err: err}
	}
	if strategy != utils.StrategyStrict {
		logger.Log.WithField("strategy", strategy).Warn("Model response needed JSON repair")
	}
	return FromValue(doc)
}

// FromValue validates an already decoded JSON document. Normalizing the JSON
// encoding of its result yields an identical report.
func FromValue(doc interface{}) (*models.FinancialReport, error) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, &apperr.SchemaError{Msg: fmt.Sprintf("Invalid format for response: expected object but got %s", typeName(doc))}
	}

	for _, section := range []string{sectionBalanceSheet, sectionIncomeStatement} {
		raw, present := root[section]
		if !present {
			return nil, &apperr.SchemaError{Path: section, Msg: "Missing required section: " + section}
		}
		if _, ok := raw.(map[string]interface{}); !ok {
			return nil, &apperr.SchemaError{Path: section, Msg: "Invalid format for section: " + section}
		}
	}
	bs := root[sectionBalanceSheet].(map[string]interface{})
	is := root[sectionIncomeStatement].(map[string]interface{})

	var (
		report models.FinancialReport
		err    error
	)

	if report.BalanceSheet.Assets.Current, report.BalanceSheet.Assets.NonCurrent, err =
		splitLists(bs, sectionBalanceSheet, "assets", "current", "non_current"); err != nil {
		return nil, err
	}
	if report.BalanceSheet.Liabilities.Current, report.BalanceSheet.Liabilities.NonCurrent, err =
		splitLists(bs, sectionBalanceSheet, "liabilities", "current", "non_current"); err != nil {
		return nil, err
	}
	if report.BalanceSheet.Equity, err = equityList(bs); err != nil {
		return nil, err
	}

	if report.IncomeStatement.Revenue.Operating, report.IncomeStatement.Revenue.NonOperating, err =
		splitLists(is, sectionIncomeStatement, "revenue", "operating", "non_operating"); err != nil {
		return nil, err
	}
	if report.IncomeStatement.Expenses.Operating, report.IncomeStatement.Expenses.NonOperating, err =
		splitLists(is, sectionIncomeStatement, "expenses", "operating", "non_operating"); err != nil {
		return nil, err
	}

	return &report, nil
}

// splitLists validates a required subsection holding two entry lists. Absent
// lists are synthesized as empty.
func splitLists(parent map[string]interface{}, section, subsection, first, second string) ([]models.Entry, []models.Entry, error) {
	raw, present := parent[subsection]
	if !present {
		return nil, nil, &apperr.SchemaError{
			Path: section + "." + subsection,
			Msg:  fmt.Sprintf("Missing subsection '%s' in %s", subsection, section),
		}
	}
	sub, ok := raw.(map[string]interface{})
	if !ok {
		return nil, nil, &apperr.SchemaError{
			Path: section + "." + subsection,
			Msg:  fmt.Sprintf("Invalid format for '%s' in %s", subsection, section),
		}
	}

	lists := make([][]models.Entry, 2)
	for i, key := range []string{first, second} {
		path := section + "." + subsection + "." + key
		rawList, present := sub[key]
		if !present {
			logger.Log.WithFields(logrus.Fields{"subsection": subsection, "subcategory": key}).
				Warn("Missing subcategory, initializing as empty list")
			lists[i] = []models.Entry{}
			continue
		}
		items, ok := rawList.([]interface{})
		if !ok {
			return nil, nil, &apperr.SchemaError{
				Path: path,
				Msg:  fmt.Sprintf("Invalid format for '%s' in %s", key, subsection),
			}
		}
		entries, err := parseEntries(path, items)
		if err != nil {
			return nil, nil, err
		}
		lists[i] = entries
	}
	return lists[0], lists[1], nil
}

// equityList validates balance_sheet.equity. Unlike the other subsections it
// is a flat list; when absent it is synthesized as empty.
func equityList(bs map[string]interface{}) ([]models.Entry, error) {
	const path = sectionBalanceSheet + ".equity"
	raw, present := bs["equity"]
	if !present {
		logger.Log.Warn("Missing equity in balance_sheet, initializing as empty list")
		return []models.Entry{}, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, &apperr.SchemaError{Path: path, Msg: "Invalid format for 'equity' in balance_sheet"}
	}
	return parseEntries(path, items)
}

func parseEntries(path string, items []interface{}) ([]models.Entry, error) {
	entries := make([]models.Entry, 0, len(items))
	for i, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			return nil, invalidItem(path, i)
		}
		name, ok := item["name"]
		if !ok {
			return nil, invalidItem(path, i)
		}

		var original interface{} = 0.0
		if v, ok := item["value"]; ok {
			original = v
		}
		entry := models.Entry{Name: nameString(name), Value: CoerceValue(original)}
		logger.Log.WithFields(logrus.Fields{"path": path, "name": entry.Name, "from": original, "to": entry.Value}).
			Debug("Converted value")
		entries = append(entries, entry)
	}
	return entries, nil
}

func invalidItem(path string, index int) error {
	return &apperr.SchemaError{
		Path: fmt.Sprintf("%s[%d]", path, index),
		Msg:  fmt.Sprintf("Invalid item format at %s[%d]", path, index),
	}
}

func nameString(v interface{}) string {
	switch n := v.(type) {
	case string:
		return n
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(n)
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
