package script

// DialogSegment is one contiguous block of dialogue attributed to a single
// speaker. Position is the zero-based index in script order.
type DialogSegment struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	SceneInfo string `json:"scene_info,omitempty"`
	Position  int    `json:"position"`
}
