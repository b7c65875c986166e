package property

import "strings"

// Row is the intermediate record between the spreadsheet and the mapper.
// All values are raw trimmed cell text; no business validation happens here.
type Row struct {
	Index int // 1-based spreadsheet row number

	Title       string
	Price       string
	City        string
	Country     string
	Description string
	University  string
	Area        string
	Services    string
	Amenities   string
	RoomTypes   string
	Rating      string
}

// ParseRow keys the raw cells by header column name and picks out the known
// columns. Unknown columns are ignored; missing ones stay empty and are the
// mapper's problem. It fails only when the row cannot be keyed at all.
func ParseRow(index int, header []string, cells []string) (Row, error) {
	row := Row{Index: index}

	if len(header) == 0 {
		return row, &MalformedRowError{Index: index, Reason: "sheet has no header row"}
	}
	if len(cells) > len(header) {
		return row, &MalformedRowError{
			Index:  index,
			Reason: "row has more cells than the header has columns",
		}
	}

	for i, cell := range cells {
		value := strings.TrimSpace(cell)
		switch strings.ToLower(strings.TrimSpace(header[i])) {
		case "title":
			row.Title = value
		case "price":
			row.Price = value
		case "city":
			row.City = value
		case "country":
			row.Country = value
		case "description":
			row.Description = value
		case "university":
			row.University = value
		case "area":
			row.Area = value
		case "services":
			row.Services = value
		case "amenities":
			row.Amenities = value
		case "roomtypes", "room types":
			row.RoomTypes = value
		case "rating":
			row.Rating = value
		}
	}

	return row, nil
}

// IsEmpty reports whether every cell of the row is blank. Blank rows are
// skipped by the importer, they are neither successes nor failures.
func (r Row) IsEmpty() bool {
	return r.Title == "" && r.Price == "" && r.City == "" && r.Country == "" &&
		r.Description == "" && r.University == "" && r.Area == "" &&
		r.Services == "" && r.Amenities == "" && r.RoomTypes == "" && r.Rating == ""
}
