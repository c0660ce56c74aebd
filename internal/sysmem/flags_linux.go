package sysmem

import "golang.org/x/sys/unix"

// mapNoReserve defers swap accounting for the break reservation.
const mapNoReserve = unix.MAP_NORESERVE
