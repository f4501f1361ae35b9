package version

// Version is the current sightline release.
const Version = "0.1.0"
