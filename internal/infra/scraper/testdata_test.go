package scraper_test

import (
	"fmt"
	"strings"
)

// sectionPage renders a section listing shaped like the portal's markup.
func sectionPage(items ...string) string {
	return `<!DOCTYPE html>
<html lang="ko">
<body>
  <div class="section_article">
    <ul class="sa_list">` + strings.Join(items, "\n") + `
    </ul>
  </div>
</body>
</html>`
}

func listItem(href, title string) string {
	return fmt.Sprintf(`
      <li class="sa_item _SECTION_HEADLINE">
        <div class="sa_text">
          <a href="%s" class="sa_text_title _NLOG_IMPRESSION"><strong class="sa_text_strong">%s</strong></a>
          <div class="sa_text_info"><div class="sa_text_press">연합뉴스</div></div>
        </div>
      </li>`, href, title)
}

func listItemWithoutLink(title string) string {
	return fmt.Sprintf(`
      <li class="sa_item">
        <div class="sa_text"><strong class="sa_text_strong">%s</strong></div>
      </li>`, title)
}
