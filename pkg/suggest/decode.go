package suggest

import (
	"fmt"
	"strings"

	"github.com/bastiangx/citycomplete/pkg/dictionary"
	"github.com/tidwall/gjson"
)

// wrapperKeys are the object keys a candidate list may be nested under.
var wrapperKeys = []string{"cities", "data"}

// nameKeys are the record fields holding a display name, in priority order.
var nameKeys = []string{"name", "city"}

// DecodeRecords normalizes a data source payload into entries. Accepted shapes:
//
//	["Москва", "Казань"]
//	[{"id": 1, "name": "Москва", "region": "Московская область"}]
//	{"cities": [...]} or {"data": [...]} wrapping either of the above
//
// Records use "name" or "city" for the display name. Items without a usable
// name are skipped; a payload that yields nothing is ErrEmptyResult.
func DecodeRecords(payload []byte) ([]dictionary.Entry, error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrMalformedResponse
	}

	list, err := unwrapList(gjson.ParseBytes(payload))
	if err != nil {
		return nil, err
	}

	var entries []dictionary.Entry
	list.ForEach(func(_, item gjson.Result) bool {
		if e, ok := decodeItem(item); ok {
			entries = append(entries, e)
		}
		return true
	})

	if len(entries) == 0 {
		return nil, ErrEmptyResult
	}
	return entries, nil
}

func unwrapList(root gjson.Result) (gjson.Result, error) {
	if root.IsArray() {
		return root, nil
	}
	if root.IsObject() {
		for _, key := range wrapperKeys {
			if v := root.Get(key); v.IsArray() {
				return v, nil
			}
		}
		return gjson.Result{}, fmt.Errorf("%w: object without %s list", ErrUnrecognizedShape, strings.Join(wrapperKeys, "/"))
	}
	return gjson.Result{}, fmt.Errorf("%w: top-level %s", ErrUnrecognizedShape, root.Type)
}

func decodeItem(item gjson.Result) (dictionary.Entry, bool) {
	var e dictionary.Entry
	switch {
	case item.Type == gjson.String:
		e.Name = item.Str
	case item.Type == gjson.Number:
		e.Name = item.Raw
	case item.IsObject():
		for _, key := range nameKeys {
			if v := item.Get(key); v.Exists() && v.String() != "" {
				e.Name = v.String()
				break
			}
		}
		e.ID = item.Get("id").String()
		e.Region = item.Get("region").String()
	}

	e.Name = strings.TrimSpace(e.Name)
	return e, e.Name != ""
}
