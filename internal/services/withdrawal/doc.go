// Package withdrawal manages doctor withdrawal requests.
//
// A request reserves its amount against the doctor's wallet the moment
// it is created, so the committed total can never exceed what was
// earned. Administrators then move the request through approved to
// credited once the payout settles, or decline it with a reason, which
// releases the reservation back to the wallet.
package withdrawal
