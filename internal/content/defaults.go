package content

// Compiled-in defaults, used whenever a collection has never been
// persisted. Values carry over from the original site verbatim.

func defaultProjects() []Project {
	return []Project{
		{
			ID:          "1",
			Title:       "تصميم هوية بصرية كاملة",
			Description: "مشروع متكامل لتصميم العلامة التجارية وهوية السوشيال ميديا لمطعم فاخر.",
			Category:    CategorySocialDesign,
			ImageURL:    "https://picsum.photos/seed/design1/800/600",
			Tools:       []string{"Adobe Photoshop", "Illustrator", "Figma"},
			Status:      ProjectCompleted,
		},
		{
			ID:          "2",
			Title:       "مونتاج فيديو ترويجي",
			Description: "مونتاج احترافي لفيديو إعلاني مدته 60 ثانية باستخدام مؤثرات بصرية متقدمة.",
			Category:    CategoryVideoEditing,
			ImageURL:    "https://picsum.photos/seed/video1/800/600",
			Tools:       []string{"Adobe Premiere Pro", "After Effects"},
			Status:      ProjectCompleted,
		},
		{
			ID:          "3",
			Title:       "حملة إعلانية عقارية",
			Description: "إدارة حملة ممولة على فيسبوك وانستجرام حققت عائداً استثمارياً بنسبة 300%.",
			Category:    CategoryAdCampaigns,
			ImageURL:    "https://picsum.photos/seed/ads1/800/600",
			Tools:       []string{"Meta Ads Manager", "Google Analytics"},
			Status:      ProjectCompleted,
		},
	}
}

func defaultHero() HeroContent {
	return HeroContent{
		Tagline:     "الاستوديو الإبداعي الخاص بك",
		Title:       "نصنع <span class='gradient-text'>التميز</span> الذي تستحقه",
		Description: "متخصص في صياغة التجارب البصرية التي لا تُنسى، من خلال دمج التصميم الاستراتيجي مع تقنيات المونتاج الحديثة.",
		ImageURL:    "https://images.unsplash.com/photo-1626785774573-4b799315345d?auto=format&fit=crop&q=80&w=1000",
	}
}

func defaultServices() []Service {
	return []Service{
		{ID: "1", Title: "تصميم الإعلانات", Desc: "تصميمات بصرية تخطف الأنظار تزيد من نسبة النقر والتفاعل.", IconType: IconDesign},
		{ID: "2", Title: "مونتاج الفيديو", Desc: "تحويل لقطاتك العادية إلى قصة سينمائية ملهمة ومؤثرة.", IconType: IconVideo},
		{ID: "3", Title: "إدارة الحملات", Desc: "تحليل دقيق واستهداف ذكي لضمان أفضل وصول لجمهورك المستهدف.", IconType: IconAds},
	}
}

func defaultSettings() SiteSettings {
	return SiteSettings{
		AdminPassword: "gahlan2025",
		TiktokURL:     "https://tiktok.com/@gahlan",
		FacebookURL:   "https://facebook.com/gahlan",
		Phone:         "+201012345678",
		Email:         "contact@gahlan.com",
	}
}
