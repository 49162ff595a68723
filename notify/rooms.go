package notify

import "regexp"

var roomSeparators = regexp.MustCompile(`[,;\s]+`)

// ParseRooms splits a room list on commas, semicolons and whitespace. Room
// names are not validated.
//
// Empty segments are dropped wherever they occur, including a leading one
// (",#a" is just "#a"). The result always holds at least one entry: input
// with no room names (the empty string, or only separators) yields a single
// empty-string room, so a publish against it still makes one attempt.
func ParseRooms(s string) []string {
	var rooms []string
	for _, part := range roomSeparators.Split(s, -1) {
		if part != "" {
			rooms = append(rooms, part)
		}
	}
	if len(rooms) == 0 {
		return []string{""}
	}
	return rooms
}
