package emails

import (
	"fmt"

	"github.com/a-h/templ"
)

// siteURL is where links in emails point
const siteURL = "https://meadowlarktravel.com"

func dollars(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func vacationLink(slug string) templ.SafeURL {
	return templ.URL(siteURL + "/vacation/" + slug)
}
