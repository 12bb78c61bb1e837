package preferences

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalJSON also accepts the sound the way older plugin versions stored it:
// a plain byte array, or a string holding one ("[82,73,70,70]").
// Every other field decodes as usual, even when the sound does not.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		*plain
		Sound json.RawMessage `json:"customNotificationSoundBytes"`
	}{plain: (*plain)(r)}

	err := json.Unmarshal(data, &aux)
	if len(aux.Sound) == 0 {
		return err
	}

	sound, soundErr := decodeSound(aux.Sound)
	if soundErr != nil {
		if err == nil {
			err = fmt.Errorf("customNotificationSoundBytes: %w", soundErr)
		}
		return err
	}
	r.CustomNotificationSoundBytes = sound
	return err
}

func decodeSound(raw json.RawMessage) ([]byte, error) {
	if string(raw) == "null" {
		return []byte{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return decodeByteArray(raw)
	}
	if strings.HasPrefix(strings.TrimSpace(s), "[") {
		return decodeByteArray([]byte(s))
	}
	return base64.StdEncoding.DecodeString(s)
}

func decodeByteArray(raw []byte) ([]byte, error) {
	var nums []int
	if err := json.Unmarshal(raw, &nums); err != nil {
		return nil, err
	}

	out := make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("byte %d out of range: %d", i, n)
		}
		out[i] = byte(n)
	}
	return out, nil
}
