// Package repositories implements persistence for the address book.
//
// The address book lives in a single named slot holding the whole collection as one JSON array.
// Every mutation is one read-modify-write of that slot, performed atomically by the backend.
//
// Slot backends:
//   - [SQLiteSlot] : row in the slots table of a SQLite database (default)
//   - [BoltSlot] : key in the slots bucket of a bbolt file
//   - [MemorySlot] : process-lifetime byte buffer, used in tests and for throwaway sessions
//
// [AddressRepository] implements [models.AddressStore] on top of any [Slot].
// A slot that was never written, or whose payload cannot be decoded, reads as an empty address book.
package repositories
