package common

import "encoding/json"

// Status certificate status in ledger
type Status int

const (
	StatusNone Status = iota
	StatusActive
	StatusSuperseded // re-issued with the same name
)

var (
	statusToStr = map[Status]string{}
	strToStatus = map[string]Status{}
)

func init() {
	for status, str := range map[Status]string{
		StatusNone:       "",
		StatusActive:     "active",
		StatusSuperseded: "superseded",
	} {
		statusToStr[status] = str
		strToStatus[str] = status
	}
}

func (st Status) String() string                    { return statusToStr[st] }
func (st Status) MarshalJSON() ([]byte, error)      { return json.Marshal(st.String()) }
func (st Status) MarshalYAML() (interface{}, error) { return st.String(), nil }
func (st *Status) UnmarshalJSON(data []byte) error {
	var s string

	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*st = strToStatus[s]

	return nil
}

// StrToStatus unknown string returns StatusNone
func StrToStatus(s string) Status { return strToStatus[s] }
