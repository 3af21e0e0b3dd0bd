// Package catalog defines the records shelf manages: stores, the products they
// stock, and append-only product comments.
//
// Every record implements Entity so the view-state engine can read fields by
// name without knowing the concrete type. Field values carry a Kind so sorting
// uses natural ordering: strings lexicographically, numbers numerically and
// dates chronologically.
//
// Status is a closed enum. Code that maps a status to presentation switches on
// the three constants directly so a new status shows up as a missing case.
//
// Wire names are snake_case. Dates accept RFC3339, YYYY-MM-DD and the OData v2
// /Date(ms)/ literal so both remote backends decode into the same structs.
package catalog
