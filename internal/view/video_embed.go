package view

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	videoEmbedLinePattern = regexp.MustCompile(`^\s*<?((?:https?://)?[^\s]+)>?\s*$`)
	videoEmbedSrcPattern  = regexp.MustCompile(
		`^https://(?:www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`,
	)
	videoEmbedTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
	listIndexPattern      = regexp.MustCompile(`^\d+\.\s+`)
)

type videoEmbed struct {
	Platform string
	Source   string
	EmbedURL string
}

// applyVideoEmbeds replaces lines that hold nothing but a YouTube or Vimeo
// link with an embedded player. Code blocks, quotes and lists are left alone.
func applyVideoEmbeds(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return markdown
	}

	lines := strings.Split(markdown, "\n")
	fenceMarker := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := detectFenceMarker(trimmed); marker != "" {
			switch {
			case fenceMarker == "":
				fenceMarker = marker
			case strings.HasPrefix(trimmed, fenceMarker):
				fenceMarker = ""
			}
			continue
		}
		if fenceMarker != "" || isIndentedCodeLine(line) || shouldSkipEmbedLine(trimmed) {
			continue
		}

		match := videoEmbedLinePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		embed, ok := parseVideoEmbed(match[1])
		if !ok {
			continue
		}
		lines[i] = buildVideoEmbedHTML(embed)
	}

	return strings.Join(lines, "\n")
}

func detectFenceMarker(line string) string {
	if strings.HasPrefix(line, "```") {
		return "```"
	}
	if strings.HasPrefix(line, "~~~") {
		return "~~~"
	}
	return ""
}

func isIndentedCodeLine(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func shouldSkipEmbedLine(line string) bool {
	if line == "" || strings.HasPrefix(line, ">") {
		return true
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	return listIndexPattern.MatchString(line)
}

func parseVideoEmbed(raw string) (videoEmbed, bool) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(raw), "<"), ">")
	trimmed = normalizeVideoURL(trimmed)

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil {
		return videoEmbed{}, false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return videoEmbed{}, false
	}

	if embed, ok := parseYouTubeEmbed(parsed, trimmed); ok {
		return embed, true
	}
	return parseVimeoEmbed(parsed, trimmed)
}

func normalizeVideoURL(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	for _, prefix := range []string{"youtube.com/", "www.youtube.com/", "youtu.be/", "vimeo.com/"} {
		if strings.HasPrefix(lower, prefix) {
			return "https://" + raw
		}
	}
	return raw
}

func parseYouTubeEmbed(u *url.URL, source string) (videoEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	var videoID string

	switch {
	case host == "youtu.be":
		videoID = strings.Trim(u.Path, "/")
	case isHostOrSubdomain(host, "youtube.com"):
		path := strings.Trim(u.Path, "/")
		switch {
		case path == "watch":
			videoID = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			videoID = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			videoID = strings.TrimPrefix(path, "embed/")
		}
	default:
		return videoEmbed{}, false
	}
	videoID, _, _ = strings.Cut(videoID, "/")
	if videoID == "" {
		return videoEmbed{}, false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("modestbranding", "1")
	values.Set("playsinline", "1")
	if start := parseYouTubeStart(u); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}

	return videoEmbed{
		Platform: "youtube",
		Source:   source,
		EmbedURL: "https://www.youtube-nocookie.com/embed/" + url.PathEscape(videoID) + "?" + values.Encode(),
	}, true
}

func parseYouTubeStart(u *url.URL) int {
	query := u.Query()
	if value := query.Get("start"); value != "" {
		return parseYouTubeTime(value)
	}
	return parseYouTubeTime(query.Get("t"))
}

func parseYouTubeTime(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(trimmed); err == nil {
		return max(seconds, 0)
	}

	total := 0
	for _, match := range videoEmbedTimePattern.FindAllStringSubmatch(trimmed, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || n <= 0 {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func parseVimeoEmbed(u *url.URL, source string) (videoEmbed, bool) {
	if !isHostOrSubdomain(u.Hostname(), "vimeo.com") {
		return videoEmbed{}, false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	videoID := segments[len(segments)-1]
	if _, err := strconv.ParseUint(videoID, 10, 64); err != nil {
		return videoEmbed{}, false
	}
	return videoEmbed{
		Platform: "vimeo",
		Source:   source,
		EmbedURL: "https://player.vimeo.com/video/" + videoID + "?dnt=1",
	}, true
}

func buildVideoEmbedHTML(embed videoEmbed) string {
	return fmt.Sprintf(
		`<div class="video-embed" data-video-embed="true" data-video-platform="%s" data-video-source="%s">`+
			`<iframe src="%s" title="%s" loading="lazy" allow="%s" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
			`</div>`,
		htmlstd.EscapeString(embed.Platform),
		htmlstd.EscapeString(embed.Source),
		htmlstd.EscapeString(embed.EmbedURL),
		htmlstd.EscapeString(videoEmbedTitle(embed.Platform)),
		"accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share",
	)
}

func videoEmbedTitle(platform string) string {
	switch platform {
	case "youtube":
		return "YouTube video player"
	case "vimeo":
		return "Vimeo video player"
	}
	return "Video player"
}

func isHostOrSubdomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
