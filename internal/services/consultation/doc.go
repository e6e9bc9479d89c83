// Package consultation records consultations and pays doctors their
// share of the fee. Commission rates are snapshotted onto each record
// at creation time; completion credits the doctor's wallet through the
// wallet service.
package consultation
