package constant

// RoleAdmin is the only role the admin JWT carries.
const RoleAdmin = "admin"
