package domain

// AdmissibleQuantity computes the quantity a cart line may hold after a
// request for `requested` more units, given what the line already holds and
// the stock the catalog last reported. Setting a quantity directly is the
// same call with existingInCart = 0. The flag reports whether the result was
// clamped below what was asked for. Callers reject requested < 1 before
// calling.
func AdmissibleQuantity(requested, existingInCart, availableStock int) (int, bool) {
	want := requested + existingInCart
	if want <= availableStock {
		return want, false
	}
	return availableStock, true
}
