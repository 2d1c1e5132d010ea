package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SlotList список слотов в теле запроса. Принимает JSON массив
// или строку с сериализованным массивом (формат старого клиента).
type SlotList []string

func (s *SlotList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	var labels []string
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(encoded), &labels); err != nil {
			return fmt.Errorf("time_slots string must contain a JSON array: %w", err)
		}
	} else if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}

	if labels == nil {
		labels = []string{}
	}
	*s = labels
	return nil
}
