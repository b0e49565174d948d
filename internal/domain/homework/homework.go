// internal/domain/homework/homework.go
package homework

// Keys of the API payload.
const (
	KeyCurrentDate  = "current_date"
	KeyHomeworks    = "homeworks"
	KeyHomeworkName = "homework_name"
	KeyStatus       = "status"
)

// Item is a single homework record as received from the API. Only
// homework_name and status are read, other keys are ignored.
type Item map[string]any

// FetchResult is a validated API response, alive for one cycle.
type FetchResult struct {
	Homeworks   []Item
	CurrentDate int64
}

// NewFetchResult validates payload and converts it into a FetchResult.
func NewFetchResult(payload any) (*FetchResult, error) {
	if err := Validate(payload); err != nil {
		return nil, err
	}
	m := payload.(map[string]any)

	currentDate, _ := asInt64(m[KeyCurrentDate])
	raw := m[KeyHomeworks].([]any)

	items := make([]Item, 0, len(raw))
	for i, v := range raw {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, Errorf(KindType, "homework #%d should be an object, not %s", i, typeName(v))
		}
		items = append(items, Item(obj))
	}

	return &FetchResult{Homeworks: items, CurrentDate: currentDate}, nil
}
