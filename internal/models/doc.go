// Package models defines the domain entities and the persistence interface of the address book.
//
// The package contains two kinds of types:
//
// 1. Lookup data: what the postal code service returns
//   - [Location] : Address fields resolved for a CEP, including the not-found flag
//
// 2. Persistent entities: what the address book stores
//   - [Address] : A saved entry combining user supplied labels with a resolved [Location]
//
// [AddressStore] is the storage abstraction used by the controller and surfaces.
// Implementations live in the repositories package.
//
// JSON keys follow the lookup service's Portuguese field names (cep, logradouro, bairro, localidade, uf, ...)
// so stored address books stay readable by other tools built on the same service.
package models
