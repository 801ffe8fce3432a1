package feed

// Every optional element starts at the beginning of a line inside its
// block and ends with its own newline, so absent elements leave no blank
// line behind.
const rssT = `<?xml version="1.0" encoding="UTF-8"?>
<rss xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:atom="http://www.w3.org/2005/Atom" version="2.0">
  <channel>
{% if channel.Title %}    <title><![CDATA[{{ channel.Title|cdata }}]]></title>
{% endif %}{% if channel.Description %}    <description><![CDATA[{{ channel.Description|cdata }}]]></description>
{% endif %}    <link>{{ channel.SiteURL }}</link>
{% if channel.ImageURL %}    <image>
      <url>{{ channel.ImageURL }}</url>
      <title><![CDATA[{{ channel.Title|cdata }}]]></title>
      <link>{{ channel.SiteURL }}</link>
    </image>
{% endif %}{% if channel.Generator %}    <generator>{{ channel.Generator }}</generator>
{% endif %}    <lastBuildDate>{{ channel.LastBuildDate }}</lastBuildDate>
    <atom:link href="{{ channel.FeedURL }}" rel="self" type="application/rss+xml"/>
    <pubDate>{{ channel.PubDate }}</pubDate>
{% if channel.Copyright %}    <copyright><![CDATA[{{ channel.Copyright|cdata }}]]></copyright>
{% endif %}{% if channel.Language %}    <language>{{ channel.Language }}</language>
{% endif %}{% for item in items %}    <item>
{% if item.Title %}      <title><![CDATA[{{ item.Title|cdata }}]]></title>
{% endif %}      <description><![CDATA[{{ item.Description|cdata }}]]></description>
      <link>{{ item.URL }}</link>
      <guid isPermaLink="true">{{ item.URL }}</guid>
{% for category in item.Categories %}      <category><![CDATA[{{ category|cdata }}]]></category>
{% endfor %}{% if item.Author %}      <dc:creator><![CDATA[{{ item.Author|cdata }}]]></dc:creator>
{% endif %}{% if item.PubDate %}      <pubDate>{{ item.PubDate }}</pubDate>
{% endif %}{% if item.EnclosureURL %}      <enclosure url="{{ item.EnclosureURL }}"{% if item.EnclosureType %} type="{{ item.EnclosureType }}"{% endif %}/>
{% endif %}    </item>
{% endfor %}  </channel>
</rss>
`
