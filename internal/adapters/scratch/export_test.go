package scratch

var ExecutableSuffix = executableSuffix
