package model

// Platform is a key of Resume.SocialLinks.
type Platform struct {
	Key   string
	Label string
}

// Platforms lists the supported social link keys in display order.
var Platforms = []Platform{
	{"linkedin", "LinkedIn"},
	{"twitter", "Twitter"},
	{"portfolio", "Portfolio"},
	{"leetcode", "LeetCode"},
	{"codeforces", "Codeforces"},
	{"github", "GitHub"},
	{"instagram", "Instagram"},
}

func IsPlatform(key string) bool {
	for _, p := range Platforms {
		if p.Key == key {
			return true
		}
	}
	return false
}
