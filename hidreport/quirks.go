package hidreport

// quirkForcedLinkCollectionZero lists vendor:product pairs whose preparsed
// data reports non-zero link collections that HidP_GetUsages /
// HidP_GetUsageValue never actually resolve against; zeroing every cap's
// link collection before parser construction is the only known fix.
var quirkForcedLinkCollectionZero = map[[2]uint16]struct{}{
	{0x231d, 0x011f}: {},
}

// applyLinkCollectionQuirk zeroes LinkCollection on every cap for devices
// known to need it. Mutates the slices in place.
func applyLinkCollectionQuirk(vendorID, productID uint16, buttonCaps []ButtonCapInput, valueCaps []ValueCapInput) {
	if _, ok := quirkForcedLinkCollectionZero[[2]uint16{vendorID, productID}]; !ok {
		return
	}
	for i := range buttonCaps {
		buttonCaps[i].LinkCollection = 0
	}
	for i := range valueCaps {
		valueCaps[i].LinkCollection = 0
	}
}
