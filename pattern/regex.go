package pattern

import "regexp"

// Pre-compiled, anchored full-match expressions.
var (
	digitsRegex   = regexp.MustCompile(`^\d+$`)
	numberRegex   = regexp.MustCompile(`^-?((\d{1,3}(,?\d{3})*)\.?\d*|(\d{1,3}(,?\d{3})*)?\.\d+)$`)
	currencyRegex = regexp.MustCompile(`^-?((\d{1,3}(,?\d{3})*)?\.\d\d)$`)
	emailRegex    = regexp.MustCompile(`(?i)^[^\s@]+@([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]+$`)

	hostnameRegex = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)
	domainRegex   = regexp.MustCompile(`(?i)^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}$`)
	ipv4Regex     = regexp.MustCompile(`^(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}$`)
	urlPathRegex  = regexp.MustCompile(`^/[^\s?#]*(\?[^\s#]*)?(#\S*)?$`)
	urlRegex      = regexp.MustCompile(`(?i)^([a-z][a-z0-9+.-]*)://` +
		`([^\s/?#@]+@)?` +
		`([a-z0-9.-]+|\[[0-9a-f:.]+\])` +
		`(:\d{1,5})?` +
		`([/?#]\S*)?$`)

	ssnRegex     = regexp.MustCompile(`^(\d{3})-?(\d{2})-?(\d{4})$`)
	zipRegex     = regexp.MustCompile(`^\d{5}$`)
	zip4Regex    = regexp.MustCompile(`^\d{5}-\d{4}$`)
	zipFullRegex = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	cvvRegex     = regexp.MustCompile(`^\d{3,4}$`)
	cardRegex    = regexp.MustCompile(`^\d+([ -]\d+)*$`)
)
