package auth

// where the browser lands after logging out
const HomePath = "/"
