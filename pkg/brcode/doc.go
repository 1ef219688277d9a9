// Package brcode builds and reads static PIX "BR Codes".
//
// A BR Code is the EMV-QRCPS text payload scanned by Brazilian banking apps:
// a flat sequence of TLV fields (2-digit id, 2-digit length, value), some of
// which nest further TLV sequences, terminated by a CRC-16/CCITT-FALSE
// checksum over everything that precedes it, including the "6304" trailer.
//
// Everything in this package is pure and safe for concurrent use. The only
// shared state is the immutable Merchant held by a Builder.
package brcode
