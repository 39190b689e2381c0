package domain

// Group is a named set of users
type Group struct {
	Name    string   `json:"name" yaml:"name" validate:"required"`
	Members []string `json:"members" yaml:"members"`
}

// RoleAssignment lists the users holding a role. An empty Unit is the global table.
type RoleAssignment struct {
	Role  string   `json:"role" yaml:"role" validate:"required"`
	Unit  string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Users []string `json:"users" yaml:"users"`
}
