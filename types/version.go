package types

// Version is the canonical strata version. All components report this
// single version (lockstep versioning).
const Version = "0.1.0"
