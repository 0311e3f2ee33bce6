package factor

// rsaModulus512 is the product of two 256-bit primes. It is far beyond the
// reach of the bounded divisor searches; tests use it to verify that the
// engine classifies it composite and that bounded searches terminate with
// ErrSearchExhausted instead of hanging.
const rsaModulus512 = "7926955442507415057210607385506121997689529697485136240574604503768788820120193532578286006291189972668427413500371142792463105078406585121658835942452443"
