package entity

type TableStatus int

const (
	TableFree     TableStatus = 0
	TableBusy     TableStatus = 1
	TableReserved TableStatus = 2
)

func (s TableStatus) Label() string {
	switch s {
	case TableFree:
		return "FREE"
	case TableBusy:
		return "BUSY"
	case TableReserved:
		return "RESERVED"
	default:
		return "UNKNOWN"
	}
}

type Table struct {
	ID     string      `json:"id"`
	Number string      `json:"number"`
	Status TableStatus `json:"status"`
}
