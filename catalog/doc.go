// Package catalog holds the product catalog domain types shared by the comparison
// resolver, the store and the HTTP transport.
//
// # Overview
//
// An Item is a read-only snapshot of a catalog product. Items are created and mutated
// exclusively by the backing store; this module only reads them and writes cache copies.
//
// The package also carries the presentation helpers that sit outside the resolver:
//
//   - ParseIDs turns a comma separated id list into identifiers
//   - ParseFields turns a comma separated field list into a FieldSet
//   - Project maps an Item and a FieldSet into an ItemView for serialization
//
// # Field Projection
//
// Projection never truncates the Item itself. An empty FieldSet means "all fields";
// a non-empty FieldSet populates only the listed fields of the ItemView. Unknown field
// tokens are dropped silently by ParseFields:
//
//	fields := catalog.ParseFields("name, PRICE, unknown")
//	view := catalog.Project(item, fields) // only Name and Price are set
package catalog
