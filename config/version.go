package config

// Version is the build version, set with -ldflags "-X".
var Version = "dev"
