// Package models defines the core domain models for Messmate.
//
// # Entities
//
//   - User: a login account; one account can own or belong to a mess
//   - Mess: a shared household that tracks meals and money together
//   - Membership: a user's role within a mess (super admin, manager, member)
//   - Member: a boarder inside a mess; the unit meals and deposits are
//     recorded against. A member may optionally be linked to a User.
//   - Meal: one member's consumption on one date (breakfast/lunch/dinner
//     flags plus fractional extras)
//   - Expense: money spent from the shared fund on a date
//   - Deposit: money a member paid into the shared fund
//   - ManagerAssignment: a date range during which a user may edit the
//     mess's meal sheet
//
// # Design Principles
//
//  1. IDs are UUID strings, timestamps are Unix seconds.
//  2. Calendar dates (meal dates, expense dates, assignment ranges) are
//     time.Time values at UTC midnight; only the date part is meaningful.
//  3. Relationships are ID strings, not pointers, to avoid circular
//     references between entities.
//  4. Money is float64 throughout; callers compare with a cent epsilon.
package models
