package services

import "github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"

// DemoCategories are loaded when STORE_SEED_DEMO is set.
var DemoCategories = []domain.Category{
	{ID: "living-room", Name: "Living room", Color: "#c49a6c", SortOrder: 1},
	{ID: "bedroom", Name: "Bedroom", Color: "#8fa3b8", SortOrder: 2},
	{ID: "kitchen", Name: "Kitchen", Color: "#d6c38b", SortOrder: 3},
	{ID: "bathroom", Name: "Bathroom", Color: "#7fb7b2", SortOrder: 4},
	{ID: "outdoor", Name: "Outdoor", Color: "#88a86b", SortOrder: 5},
}

// DemoUsers are loaded when STORE_SEED_DEMO is set.
var DemoUsers = []domain.User{
	{ID: "user-admin", Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.AccountActive},
	{ID: "user-demo", Username: "demo", Email: "demo@example.com", Role: domain.RoleUser, Status: domain.AccountActive},
}
