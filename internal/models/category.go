package models

// FallbackColor is used for categories and activity types without a palette entry
const FallbackColor = "#6366F1"

// Category describes a habit category offered when creating habits
type Category struct {
	ID    string
	Label string
	Color string
}

// Categories lists the known habit categories in display order
var Categories = []Category{
	{ID: "health", Label: "Health", Color: "#E91E63"},
	{ID: "exercise", Label: "Exercise", Color: "#4CAF50"},
	{ID: "learning", Label: "Learning", Color: "#9C27B0"},
	{ID: "productivity", Label: "Productivity", Color: "#3F51B5"},
	{ID: "nutrition", Label: "Nutrition", Color: "#FF9800"},
	{ID: "mindfulness", Label: "Mindfulness", Color: "#00BCD4"},
	{ID: "social", Label: "Social", Color: "#FF5722"},
	{ID: "personal", Label: "Personal", Color: "#607D8B"},
}

// ActivityType describes a known activity type
type ActivityType struct {
	ID    string
	Label string
	Color string
}

// ActivityTypes lists the known activity types
var ActivityTypes = []ActivityType{
	{ID: "meeting", Label: "Meeting", Color: "#3B82F6"},
	{ID: "exercise", Label: "Exercise", Color: "#10B981"},
	{ID: "study", Label: "Study", Color: "#8B5CF6"},
	{ID: "meal", Label: "Meal", Color: "#F59E0B"},
	{ID: "work", Label: "Work", Color: "#3F51B5"},
	{ID: "personal", Label: "Personal", Color: "#607D8B"},
}

// LookupCategory returns the category with the given id
func LookupCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryColor returns the palette color for a category, or FallbackColor
func CategoryColor(id string) string {
	if c, ok := LookupCategory(id); ok {
		return c.Color
	}
	return FallbackColor
}

// CategoryLabel returns the display label for a category; unknown ids are shown as-is
func CategoryLabel(id string) string {
	if c, ok := LookupCategory(id); ok {
		return c.Label
	}
	return id
}

// ActivityTypeColor returns the palette color for an activity type, or FallbackColor
func ActivityTypeColor(id string) string {
	for _, t := range ActivityTypes {
		if t.ID == id {
			return t.Color
		}
	}
	return FallbackColor
}

// ActivityTypeLabel returns the display label for an activity type; unknown ids are shown as-is
func ActivityTypeLabel(id string) string {
	for _, t := range ActivityTypes {
		if t.ID == id {
			return t.Label
		}
	}
	return id
}
