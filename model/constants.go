package model

// DatetimeFormat is the format used for every datetime written into a feature
const DatetimeFormat = "2006-01-02T15:04:05.999999Z"

// FootprintPrecision is the number of decimal places kept on footprint coordinates
const FootprintPrecision = 7
