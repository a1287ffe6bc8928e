// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type StoreError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	CrossScopeTransfer           = InvalidError("cannot transfer across scopes")
	DataInconsistent             = RecordError("data inconsistent")
	IncompatibleDatabaseVersion  = ProcessError("incompatible database version")
	InsufficientBalance          = InvalidError("insufficient balance")
	InvalidCount                 = InvalidError("count out of range")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIpAddress             = InvalidError("invalid ip address")
	InvalidOwnerIdentifier       = InvalidError("owner identifier is invalid")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidRecordLength          = LengthError("invalid record length")
	InvalidScopeIdentifier       = InvalidError("scope identifier is invalid")
	InvalidTimeInterval          = InvalidError("interval end is before start")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	LogNotFound                  = NotFoundError("ledger entry not found")
	MetadataNotSerializable      = RecordError("metadata is not serializable")
	MissingParameters            = InvalidError("missing parameters")
	NegativeBalance              = InvalidError("balance cannot be negative")
	NotAvailableInCurrentMode    = ProcessError("not available in current mode")
	NotInitialised               = ProcessError("not initialised")
	RateLimiting                 = ProcessError("rate limiting")
	ScopeNotFound                = NotFoundError("scope store not found")
	StoreUnavailable             = StoreError("store unavailable")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }
func (e StoreError) Error() string    { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
func IsErrStore(e error) bool    { _, ok := e.(StoreError); return ok }
