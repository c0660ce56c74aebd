package sysmem

// Darwin overcommits anonymous memory by default; there is no flag to set.
const mapNoReserve = 0
