package banks

import "strings"

// Bank is a single entry in the fixed Nigerian bank registry used for
// mandate setup. The registry is compiled in; bank codes are assigned by
// NIBSS and do not change at runtime.
type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var registry = []Bank{
	{Name: "Access Bank", Code: "044"},
	{Name: "Citibank Nigeria", Code: "023"},
	{Name: "Ecobank Nigeria", Code: "050"},
	{Name: "Fidelity Bank", Code: "070"},
	{Name: "First Bank of Nigeria", Code: "011"},
	{Name: "First City Monument Bank", Code: "214"},
	{Name: "Globus Bank", Code: "103"},
	{Name: "Guaranty Trust Bank", Code: "058"},
	{Name: "Heritage Bank", Code: "030"},
	{Name: "Jaiz Bank", Code: "301"},
	{Name: "Keystone Bank", Code: "082"},
	{Name: "Kuda Bank", Code: "50211"},
	{Name: "Moniepoint", Code: "50515"},
	{Name: "Opay", Code: "999992"},
	{Name: "PalmPay", Code: "999991"},
	{Name: "Polaris Bank", Code: "076"},
	{Name: "Providus Bank", Code: "101"},
	{Name: "Stanbic IBTC Bank", Code: "221"},
	{Name: "Standard Chartered Bank", Code: "068"},
	{Name: "Sterling Bank", Code: "232"},
	{Name: "Suntrust Bank", Code: "100"},
	{Name: "Titan Trust Bank", Code: "102"},
	{Name: "Union Bank of Nigeria", Code: "032"},
	{Name: "United Bank for Africa", Code: "033"},
	{Name: "Unity Bank", Code: "215"},
	{Name: "Wema Bank", Code: "035"},
	{Name: "Zenith Bank", Code: "057"},
}

var byCode = func() map[string]Bank {
	m := make(map[string]Bank, len(registry))
	for _, b := range registry {
		m[b.Code] = b
	}
	return m
}()

// All returns the registry in listing order.
func All() []Bank {
	out := make([]Bank, len(registry))
	copy(out, registry)
	return out
}

// ByCode looks up a bank by its code.
func ByCode(code string) (Bank, bool) {
	b, ok := byCode[strings.TrimSpace(code)]
	return b, ok
}

// IsValidCode reports whether code belongs to a known bank.
func IsValidCode(code string) bool {
	_, ok := ByCode(code)
	return ok
}
